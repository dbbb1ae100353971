/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Every extension keeps a single configuration object, serialized under the
"_c:<package name>" key. It is set from the genesis file and read by the
handlers on every call that depends on it.
*/
package gconf
