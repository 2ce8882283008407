/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object, stored under the
"_c:<package name>" key. Use InitConfig to load it from the genesis "conf"
section, Save to update it and Load to read it back.
*/
package gconf
