// Package authn issues and verifies the HMAC-signed bearer tokens used
// by the authorization gate. Token extraction and claim parsing are pure
// functions of their inputs; no storage is touched.
package authn
