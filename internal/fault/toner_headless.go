//go:build headless

package fault

// HeadlessToner is a no-op Toner for tests and CI, grounded on
// audio_backend_headless.go.
type HeadlessToner struct{}

func NewToner() Toner { return HeadlessToner{} }

func (HeadlessToner) Alert() {}
