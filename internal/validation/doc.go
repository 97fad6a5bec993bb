// Package validation provides centralized input validation logic.
// This includes bucket, key and fop validation plus classification of dfop
// inputs into remote URLs and local paths.
//
// All user inputs are validated before a request is built so that invalid
// calls never reach the network.
package validation
