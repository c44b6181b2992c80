// Package domain contains the user-management domain: validated value objects
// (user names, the email variants, passwords and verification tokens) and the
// entities built from them. Nothing in here performs I/O; every constructor
// either returns a valid value or a *valueobject.Error describing the first
// rule the input broke.
package domain
