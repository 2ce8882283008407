/*
Package cash defines a simple ledger of a single native token.

Each address owns a wallet holding an unsigned amount of coins. There is no
logic in the coins, except that the balance of any wallet may not go below
zero and may not overflow. Thus, this implementation is referred to as cash.
Simple and safe.

The stream extension uses the Controller to move funds in and out of the
escrow custody account.
*/
package cash
