/*
Package history keeps an off-chain index of delivered transactions.

The index lives in a sqlite database next to the node data and is never part
of the consensus state. A write failure is logged and does not affect the
transaction result.
*/
package history
