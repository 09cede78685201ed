// Package apperr defines the closed set of failure kinds surfaced by the gateway.
//
// Every failure that crosses a package boundary is an *Error carrying a Kind and
// whatever context identifies it (shipment id, remote page, invalid fields).
// Callers branch on the kind with IsKind or errors.As; HTTP handlers translate
// it with HTTPStatus.
package apperr
