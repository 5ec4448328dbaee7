/*
Package coin defines the value units moved by the bank.

A Coin is an amount of a single asset. Asset 0 is the native unit of the
chain; any other id references an asset registered in the bank. Amounts are
unsigned and all arithmetic is checked, so a balance can never wrap around.
*/
package coin
