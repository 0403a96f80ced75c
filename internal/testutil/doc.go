// Package testutil contains helper builders and fakes used across tests to
// reduce boilerplate when constructing tabs and asserting what was sent over
// the channel. These helpers are not intended for production usage.
package testutil
