/*
Package bank keeps the wallets of all accounts and the registry of
secondary assets.

The native unit (asset 0) can be held by anyone. Any other asset must be
registered at genesis, and a wallet must opt in to it before it can receive
it. Coin movement is checked: a transfer never creates or destroys value and
never leaves a balance negative.
*/
package bank
