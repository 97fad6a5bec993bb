// Package internal contains private implementation details for the Qiniu client.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - operations: request builders for fop, listing and CDN statistics
//   - multipart: single-part multipart/form-data encoding
//   - normalize: conversion of transport outcomes into result records
//   - transport: the HTTP collaborator
//   - validation: input validation and dfop input classification
package internal
