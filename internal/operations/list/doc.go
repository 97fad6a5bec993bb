// Package list provides bucket listing over the marker protocol.
// It supports single-page listing, page-by-page iteration and streaming of
// every key through a channel.
package list
