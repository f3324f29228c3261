// Package weathertests contains the end-to-end workflow that is run against the weather
// service: health, registration, login, station management, and measurement ingestion and
// retrieval.
//
// Infrastructure that is not specific to the weather domain, such as running steps in order,
// deciding whether to stop after a failure, and reporting, is in the lower-level framework
// package. Talking HTTP to the service is done by the apiclient package.
package weathertests
