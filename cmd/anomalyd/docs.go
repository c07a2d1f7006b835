package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           anomalyd API
// @version         1.0
// @description     HTTP API for managing verified model-weight artifacts.
//
// @contact.name   anomalyd maintainers
// @contact.url    https://github.com/your-org/anomalyd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
