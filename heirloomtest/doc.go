/*
Package heirloomtest provides helpers for testing extensions: conditions
backed by real ed25519 keys and mock authenticators.
*/
package heirloomtest
