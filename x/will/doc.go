/*
Package will implements a time-locked digital will.

An owner creates a single will naming up to three beneficiaries with
percentage allocations, locks native value (and optionally units of one
secondary asset) in the custody wallet, and periodically checks in to prove
liveness. Once the owner misses the inactivity deadline anyone may activate
the inheritance, after which every beneficiary can withdraw its share exactly
once. Before activation the owner may revoke the will and recover all locked
value.
*/
package will
