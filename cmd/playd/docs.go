package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           playd API
// @version         1.0
// @description     HTTP API for a local LLM playground: model pulls, retrieval-augmented ask, and chat sessions.
//
// @contact.name   playd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
