/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under a key derived from
its package name. The object is loaded from the "conf" section of the genesis
file and read back by handlers when they need a parameter.
*/
package gconf
