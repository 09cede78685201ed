// Package utils provides small helpers shared by the wire and API layers:
// loose JSON scalar conversion, optional-string helpers and page arithmetic.
package utils
