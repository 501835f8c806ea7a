package validators

import "net/mail"

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}
