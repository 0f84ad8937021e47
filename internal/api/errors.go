package api

import "fmt"

type invalidParamError struct {
	param string
}

func (e invalidParamError) Error() string {
	return fmt.Sprintf("invalid or missing parameter: %s", e.param)
}

func errInvalidParam(param string) error {
	return invalidParamError{param: param}
}
