// Package api is the HTTP transport of the devfolio client.
//
// # Overview
//
// Every backend call goes through Client, which:
//  1. Attaches "Authorization: Bearer <token>" when the Authenticator holds a
//     token, and an X-Request-ID header on every request.
//  2. Decodes the uniform response envelope. When the body cannot be parsed an
//     envelope is synthesized from the HTTP status.
//  3. Treats every non-2xx status as a failure, even when the body claimed
//     success.
//  4. Rewrites 401 into a session-expired failure and asks the Authenticator to
//     invalidate the session, unless the call passed KeepSessionOn401 or
//     Anonymous. 403 becomes a permission failure and leaves the session as is.
//
// # Error Handling
//
// Failures are returned as *Error. The wrapped sentinel from package common
// tells the category apart:
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) && errors.Is(err, common.ErrSessionExpired) { ... }
//
// Nothing is retried.
package api
