// Package middleware holds the gin middleware stack of the HTTP servers.
package middleware
