// Package api provides the HTTP client for the diet backend.
//
// # Overview
//
// The package turns REST/JSON calls into typed Go values and a uniform
// failure type. It is split into:
//
//   - client.go: Call, request construction, envelope unwrapping
//   - endpoints.go: the Backend interface and typed endpoint methods
//   - errors.go: ErrorKind, *Error and message extraction
//   - types.go: data structures mirroring the backend JSON
//
// The payload structs are raw transport shapes. Optional numbers are pointers
// and enum fields are plain strings; package normalize turns them into the
// canonical model.
//
// # Client Usage
//
//	tokens := auth.NewFileStore("")
//	client, err := api.NewClient("https://diet.example.com", tokens)
//	if err != nil {
//		return err
//	}
//	if err := client.Login(ctx, "alice", "secret"); err != nil {
//		return err
//	}
//	foods, err := client.FoodRecords(ctx, time.Now())
//
// # Authentication
//
// Authenticated endpoints read the bearer token from the injected
// auth.TokenStore on every call and send it as "Authorization: Bearer". When
// no token is stored the call fails with KindUnauthenticated and no request is
// made. Login, Register and RefreshToken overwrite the stored token on
// success only. A 401 is never retried or refreshed automatically.
//
// # Error Handling
//
// Every failure of Call and the typed methods is an *Error:
//
//   - KindUnauthenticated: no token, or HTTP 401
//   - KindNetwork: transport failure, timeout or cancellation
//   - KindServerError: HTTP 5xx
//   - KindClientError: any other HTTP 4xx
//   - KindDecode: malformed or empty response body
//
// The Message field holds the backend's {detail} or {message} text when
// present and a generic sentence otherwise. UserMessage renders any error for
// display.
//
// # Envelopes
//
// Responses are either a bare payload or a {code, message, data} envelope.
// Envelopes are unwrapped transparently; a code other than 0 or 200 is
// classified the same way as the equivalent HTTP status.
//
// # Thread Safety
//
// Client is safe for concurrent use. The token store serializes its own
// access.
package api
