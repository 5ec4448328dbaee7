/*
Package utils contains the decorators shared by every application stack:
panic recovery, logging, metrics, savepoints and action tagging.
*/
package utils
