// Package client implements the authenticated request pipeline for a
// ParkHub server: header composition from the token store, envelope
// decoding, and transparent recovery from access-token expiry through a
// single-flight refresh exchange. All failures surface as envelopes so
// callers handle one shape regardless of where a request died.
package client
