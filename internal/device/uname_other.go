//go:build !unix

package device

import "errors"

func readUname() (Uname, error) {
	return Uname{}, errors.ErrUnsupported
}
