// Package repository implements the auth store client over the shared
// users database. Sentinel errors let handlers map failures to the
// redirect tags the presentation layer understands.
package repository

import "errors"

// ErrAppIDExists is returned when registration is attempted with an app id
// that already has a row in the users table. The duplicate is detected with
// an explicit lookup before the insert, not by a constraint violation.
var ErrAppIDExists = errors.New("app_id already exists")
