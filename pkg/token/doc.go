// Package token issues and validates signed bearer tokens backed by
// persisted records.
//
// Validation requires both checks to pass: the token string must match
// a stored record AND the HS256 signature and expiry must verify. The
// record is the authoritative revocation point: deleting it (logout,
// forced revoke) invalidates the token even though its signature would
// still verify. Records for expired or tampered tokens are deleted on
// the validation path that encounters them.
package token
