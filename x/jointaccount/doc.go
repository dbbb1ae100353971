/*
Package jointaccount implements joint custody accounts.

An account holds token balances on behalf of a set of members. Funds and the
account itself can only be changed by motions: a member proposes a transfer,
a membership change or a new approval threshold, and the motion executes as
soon as enough members voted for it. Execution happens inside the call that
casts the deciding vote. All conditions are checked again at that point and
any violation fails the whole call, including the vote.

Handlers expect the caller address in the context, see vault.WithCaller.
Check runs the full call, including motion execution, so it must be given a
store that is discarded afterwards.
*/
package jointaccount
