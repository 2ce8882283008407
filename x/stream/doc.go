/*
Package stream implements token streams: escrows that vest linearly, block by
block, from a sender to a recipient.

A sender locks funds in the custody account and declares a payment per block
together with a block height window. Once the window opens the recipient may
withdraw whatever has vested so far. The sender may add funds at any time and
reclaim the unvested residue after the window has closed.

Both parties may agree on new terms off-chain. One party signs the canonical
digest of the stream and the proposed terms with a secp256k1 key, the other
party submits the signature together with the terms. Funds never move when
the terms change.

Stream records are never deleted.
*/
package stream
