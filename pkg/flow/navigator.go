package flow

// Navigator moves the user away from the account screens.
type Navigator interface {
	GoToLogin()
}

type NavigatorFunc func()

func (f NavigatorFunc) GoToLogin() { f() }
