package sheets

import (
	"errors"
	"fmt"
)

var (
	ErrProvisionUnsupported = errors.New("backend cannot create sheets")
	ErrEmptySheetName       = errors.New("sheet name is empty")
)

// SheetNotFoundError the target worksheet does not exist
type SheetNotFoundError struct {
	Name string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("Sheet '%s' does not exist. Cannot add entry.", e.Name)
}

// SheetExistsError the worksheet to create already exists
type SheetExistsError struct {
	Name string
}

func (e *SheetExistsError) Error() string {
	return fmt.Sprintf("sheet '%s' already exists", e.Name)
}

// IsNotFound reports whether err is a missing-sheet error.
func IsNotFound(err error) bool {
	var nf *SheetNotFoundError
	return errors.As(err, &nf)
}
