package notifier

// INotifier delivers security notifications to users: a welcome mail at
// signup and a heads-up whenever a sign-in is escalated to a TOTP challenge.
// Delivery is best effort; callers never block authentication on it.
type INotifier interface {
	NotifyFromTemplate(to string, subject string, templateName string, data any) error
}
