package shared

import "github.com/altiplano/backoffice/internal/gateway"

// FlashBackendError surfaces a failed backend call as an error toast. The
// backend's own message wins when present; transport, application and
// decode failures otherwise all look the same to the operator.
func FlashBackendError(sess *Session, fallback string, err error) {
	if sess == nil {
		return
	}
	message := fallback
	if apiErr, ok := gateway.AsAPIError(err); ok && apiErr.Message != "" {
		message = "Error: " + apiErr.Message
	}
	sess.AddFlash(FlashMessage{Kind: FlashError, Message: message})
}

// FlashSuccessMessage queues a success toast.
func FlashSuccessMessage(sess *Session, message string) {
	if sess == nil {
		return
	}
	sess.AddFlash(FlashMessage{Kind: FlashSuccess, Message: message})
}
