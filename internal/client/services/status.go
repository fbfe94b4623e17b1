package services

import "github.com/cacutler/recipearchive/internal/client/client"

// statusSink is the loading/error part of a store.
type statusSink interface {
	SetLoading(bool)
	SetError(*string)
}

// track raises the loading flag around fn. A failure is recorded as the
// store's error; success clears it.
func track(s statusSink, fn func() error) error {
	s.SetLoading(true)

	if err := fn(); err != nil {
		msg := client.Message(err)
		s.SetError(&msg)
		s.SetLoading(false)
		return err
	}

	s.SetError(nil)
	s.SetLoading(false)
	return nil
}
