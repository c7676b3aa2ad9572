package services

import (
	"context"
	"time"

	"github.com/riskgate/riskgate/internal/cache"
	"github.com/riskgate/riskgate/internal/configuration"
	apierrors "github.com/riskgate/riskgate/internal/errors"
	"github.com/riskgate/riskgate/internal/handlers"
	h "github.com/riskgate/riskgate/internal/helpers"
	m "github.com/riskgate/riskgate/internal/middlewares"
	"github.com/riskgate/riskgate/internal/models"
	"github.com/riskgate/riskgate/internal/notifier"
	"github.com/riskgate/riskgate/internal/risk"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	DB         *gorm.DB
	Cache      cache.ICache
	Risk       risk.IPredictor
	Notifier   notifier.INotifier
	AppConfig  models.AppConfiguration
	RiskConfig models.RiskConfiguration
}

func (s AuthService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/secret", handlers.GetOneHandler(s.Secret))
	r.With(m.Validate[models.SignupBody]).Post("/signup", handlers.AcceptedHandler(s.Signup))
	r.With(m.Validate[models.AuthLoginBody]).Post("/login", handlers.CreateHandler(s.Login))
	r.With(m.Validate[models.AuthStepUpBody]).Post("/login/totp", handlers.CreateHandler(s.StepUp))
	r.With(m.Validate[models.AuthVerifyBody]).Post("/verify", handlers.CreateHandler(s.Verify))

	return r
}

// Secret issues a fresh TOTP secret for an enrollment in progress. Nothing is
// bound server-side until signup echoes the secret back with a matching code;
// per-draft idempotency is the enrolling client's invariant.
func (s AuthService) Secret(
	logger *zap.Logger,
	_ models.UserClaims,
) (models.AuthSecretResponse, error) {
	secret, err := h.GenerateTOTPSecret()
	if err != nil {
		logger.Error("Failed to generate TOTP secret", zap.Error(err))
		return models.AuthSecretResponse{}, apierrors.ErrSecretGenerationFailed
	}

	return models.AuthSecretResponse{Secret: secret}, nil
}

// Signup registers a user. The submitted code must validate against the
// submitted secret, proving the authenticator app was actually provisioned
// before the account exists.
func (s AuthService) Signup(
	logger *zap.Logger,
	_ models.UserClaims,
	body models.SignupBody,
) (any, error) {
	if !h.ValidateTOTPCode(body.Secret, body.Totp) {
		return nil, apierrors.NewAPIError(401, apierrors.ErrInvalidTOTP)
	}

	var existing models.User
	result := s.DB.Where("email = ?", body.Email).First(&existing)
	if result.RowsAffected > 0 {
		return nil, apierrors.NewAPIError(409, apierrors.ErrEmailAlreadyRegistered)
	}

	hashedPassword, err := h.CreateHash(body.Password)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, apierrors.NewAPIError(500, "INTERNAL_SERVER_ERROR")
	}

	encryptedSecret, err := h.EncryptSecret(body.Secret, []byte(s.AppConfig.SecretEncryptionKey))
	if err != nil {
		logger.Error("Failed to encrypt TOTP secret", zap.Error(err))
		return nil, apierrors.NewAPIError(500, "INTERNAL_SERVER_ERROR")
	}

	user := models.User{
		FullName:        body.FullName,
		Email:           body.Email,
		HashedPassword:  hashedPassword,
		EncryptedSecret: encryptedSecret,
		RiskProfile:     "{}",
	}
	if result := s.DB.Create(&user); result.Error != nil {
		logger.Error("Failed to create user", zap.Error(result.Error))
		return nil, apierrors.NewAPIError(500, "INTERNAL_SERVER_ERROR")
	}

	logger.Info("User registered", zap.String("user_id", user.ID.String()))

	go func() {
		if notifyErr := s.Notifier.NotifyFromTemplate(
			user.Email,
			"Welcome to "+configuration.AppName,
			notifier.TemplateWelcome,
			map[string]string{"FullName": user.FullName},
		); notifyErr != nil {
			logger.Warn("Failed to send welcome notification",
				zap.Error(notifyErr),
				zap.String("user_id", user.ID.String()))
		}
	}()

	return nil, nil
}

// Login is the first-factor attempt. The verdict is ternary: a session token,
// a 401, or a 417 with TOTP_REQUIRED when the scorer flags the attempt as
// anomalous. Scorer unavailability counts as an anomaly; a login must not get
// weaker guarantees because the scorer is down.
func (s AuthService) Login(
	logger *zap.Logger,
	_ models.UserClaims,
	body models.AuthLoginBody,
) (models.AuthLoginResponse, error) {
	user, err := s.checkPassword(body.Email, body.Password)
	if err != nil {
		return models.AuthLoginResponse{}, err
	}

	prediction, err := s.Risk.Predict(context.Background(), user.Email, body.ClientContext, user.RiskProfile)
	if err != nil {
		logger.Warn("Risk prediction unavailable, escalating to step-up",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return models.AuthLoginResponse{}, apierrors.NewAPIError(417, apierrors.ErrTOTPRequired)
	}

	s.saveRiskProfile(logger, user, prediction.Profile)

	if prediction.Score >= s.RiskConfig.AnomalyScore {
		logger.Info("Anomalous login, requiring TOTP",
			zap.String("user_id", user.ID.String()),
			zap.Float64("score", prediction.Score))
		s.notifyChallenged(logger, user, body.ClientContext)
		return models.AuthLoginResponse{}, apierrors.NewAPIError(417, apierrors.ErrTOTPRequired)
	}

	return s.issueToken(logger, user)
}

// StepUp is the second-factor attempt, carrying the same identity and client
// context as the primary attempt plus the one-time code. On success the
// observation is fed back to the scorer as a legitimate sample.
func (s AuthService) StepUp(
	logger *zap.Logger,
	_ models.UserClaims,
	body models.AuthStepUpBody,
) (models.AuthLoginResponse, error) {
	user, err := s.checkPassword(body.Email, body.Password)
	if err != nil {
		return models.AuthLoginResponse{}, err
	}
	userID := user.ID.String()

	attempts, err := s.Cache.GetTOTPAttempts(userID)
	if err != nil {
		logger.Error("Failed to get TOTP attempts", zap.Error(err))
	}
	if attempts >= configuration.TOTPMaxAttempts {
		logger.Warn("TOTP rate limit exceeded",
			zap.String("user_id", userID),
			zap.Int("attempts", attempts))
		return models.AuthLoginResponse{}, apierrors.NewAPIError(429, apierrors.ErrTOTPRateLimited)
	}

	secret, err := h.DecryptSecret(user.EncryptedSecret, []byte(s.AppConfig.SecretEncryptionKey))
	if err != nil {
		logger.Error("Failed to decrypt TOTP secret", zap.Error(err))
		return models.AuthLoginResponse{}, apierrors.NewAPIError(500, "INTERNAL_SERVER_ERROR")
	}

	if !h.ValidateTOTPCode(secret, body.Totp) {
		if incErr := s.Cache.IncrementTOTPAttempts(userID); incErr != nil {
			logger.Error("Failed to increment TOTP attempts", zap.Error(incErr))
		}
		logger.Warn("Step-up verification failed", zap.String("user_id", userID))
		return models.AuthLoginResponse{}, apierrors.NewAPIError(401, apierrors.ErrInvalidTOTP)
	}

	marked, err := s.Cache.MarkTOTPCodeUsed(userID, body.Totp)
	if err != nil {
		logger.Error("Failed to mark TOTP code as used", zap.Error(err))
		return models.AuthLoginResponse{}, apierrors.NewAPIError(500, "INTERNAL_SERVER_ERROR")
	}
	if !marked {
		logger.Warn("TOTP code replay attempt detected", zap.String("user_id", userID))
		return models.AuthLoginResponse{}, apierrors.NewAPIError(401, apierrors.ErrInvalidTOTP)
	}

	if resetErr := s.Cache.ResetTOTPAttempts(userID); resetErr != nil {
		logger.Warn("Failed to reset TOTP attempts", zap.Error(resetErr))
	}

	// A verified code confirms the flagged context was legitimate after all.
	// Feeding it back is best effort; token issuance does not depend on it.
	if len(body.ClientContext) > 0 {
		profile, learnErr := s.Risk.Learn(context.Background(), user.Email, body.ClientContext, user.RiskProfile)
		if learnErr != nil {
			logger.Warn("Risk model update failed", zap.String("user_id", userID), zap.Error(learnErr))
		} else {
			s.saveRiskProfile(logger, user, profile)
		}
	}

	logger.Info("Step-up verification successful", zap.String("user_id", userID))
	return s.issueToken(logger, user)
}

func (s AuthService) Verify(
	_ *zap.Logger,
	_ models.UserClaims,
	body models.AuthVerifyBody,
) (models.UserClaims, error) {
	claims, err := h.ParseSessionToken(s.AppConfig.JWTSecret, body.Token, false)
	if err != nil {
		return models.UserClaims{}, apierrors.NewAPIError(401, "INVALID_TOKEN")
	}
	return claims, nil
}

// Me returns the profile behind a valid session token. It backs the protected
// view: reachable only through the Authenticate middleware.
func (s AuthService) Me(
	_ *zap.Logger,
	claims models.UserClaims,
) (models.User, error) {
	var user models.User
	result := s.DB.Where("id = ?", claims.UserID).First(&user)
	if result.RowsAffected != 1 {
		return models.User{}, apierrors.NewAPIError(404, "USER_NOT_FOUND")
	}
	return user, nil
}

func (s AuthService) checkPassword(email string, password string) (*models.User, error) {
	var user models.User
	result := s.DB.Where("email = ?", email).First(&user)
	if result.RowsAffected != 1 {
		return nil, apierrors.NewAPIError(401, apierrors.ErrInvalidCredentials)
	}

	match, err := argon2id.ComparePasswordAndHash(password, user.HashedPassword)
	if err != nil || !match {
		return nil, apierrors.NewAPIError(401, apierrors.ErrInvalidCredentials)
	}

	return &user, nil
}

// notifyChallenged mails the account owner that a sign-in was escalated to a
// TOTP challenge. Delivery runs outside the request path.
func (s AuthService) notifyChallenged(logger *zap.Logger, user *models.User, clientContext models.ClientContext) {
	location := "an unrecognized location"
	if city, ok := clientContext["city"].(string); ok && city != "" {
		location = city
		if country, ok := clientContext["country_name"].(string); ok && country != "" {
			location += ", " + country
		}
	}

	go func() {
		if notifyErr := s.Notifier.NotifyFromTemplate(
			user.Email,
			"Unusual sign-in to your account",
			notifier.TemplateSigninChallenged,
			map[string]string{"Location": location},
		); notifyErr != nil {
			logger.Warn("Failed to send sign-in challenge notification",
				zap.Error(notifyErr),
				zap.String("user_id", user.ID.String()))
		}
	}()
}

func (s AuthService) saveRiskProfile(logger *zap.Logger, user *models.User, profile string) {
	if profile == "" || profile == user.RiskProfile {
		return
	}
	if result := s.DB.Model(user).Update("risk_profile", profile); result.Error != nil {
		logger.Error("Failed to persist risk profile",
			zap.String("user_id", user.ID.String()),
			zap.Error(result.Error))
	}
}

func (s AuthService) issueToken(logger *zap.Logger, user *models.User) (models.AuthLoginResponse, error) {
	token, err := h.NewSessionToken(s.AppConfig.JWTSecret, user, s.AppConfig.TokenExpiryMinutes)
	if err != nil {
		logger.Error("Failed to generate session token", zap.Error(err))
		return models.AuthLoginResponse{}, apierrors.ErrGenerateAccessTokenFailed
	}

	return models.AuthLoginResponse{
		Token:     token,
		ExpiresIn: int64(time.Duration(s.AppConfig.TokenExpiryMinutes) * time.Minute / time.Second),
	}, nil
}
