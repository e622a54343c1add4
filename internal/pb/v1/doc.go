// Package pb defines the analogtimer.v1.TimerService wire contract: request
// and response messages, the JSON codec they travel with and the service
// descriptor shared by the server and the client.
package pb
