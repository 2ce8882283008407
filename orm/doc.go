/*
Package orm stores typed objects in a key value store.

A Bucket owns every key starting with its name and holds a single type of
object. Objects are found by primary key or through secondary indexes kept
up to date on every save and delete. Sequences generate primary keys.
*/
package orm
