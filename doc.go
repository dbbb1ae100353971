/*
Package vault defines the common interfaces that tie together the
subpackages of the joint custody ledger, as well as implementations of
some of the simpler components (when interfaces would be too much
overhead).

Every external call is a Msg routed to a Handler. A handler reads and
writes a KVStore and returns a DeliverResult carrying the events raised by
the call. The app package runs each call against a cache wrap of the
committed store, so a failing call leaves no trace.

We pass context.Context between app and handlers. Values stored in the
context follow one convention, for every XYZ of type T:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package vault
