// Package server provides the Gin HTTP server used by the embedded user API.
// Requests are served over HTTP/1.1 and h2c on one port.
//
//	srv := server.New("user-api", cfg, log)
//	srv.ApplyMiddleware(reg)
//	srv.RegisterDefaultEndpoints(reg, healthFunc)
//	srv.Engine().GET("/users/:id", handler)
//	err := srv.Start(ctx)
//
// Server implements component.Component so it can be started and stopped
// by a component.Registry.
package server
