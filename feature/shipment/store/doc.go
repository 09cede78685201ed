// Package store holds the local shipment mirror.
//
// Three backends implement Store: GormStore (MySQL, PostgreSQL or SQLite),
// MongoStore (one document per shipment) and MemoryStore. All of them order
// pages by created date, newest first, and exclude cancelled shipments unless
// asked.
package store
