// Package middleware contains HTTP middleware for the Fiber application.
//
//   - rayid: assigns every request a ray id, exposed in X-Ray-ID and in logs.
//   - auth: checks the API key and resolves the acting user from the
//     X-User-ID, X-Role-ID and X-Access-Key-ID headers.
package middleware
