// Package lines stores Mango Office incoming lines in the
// mango_office__phone_numbers table.
//
// Store implements reconcile.Store[PhoneNumber]: lookup by phone number, create
// and update, each write committed or rolled back on its own. It holds no
// reconciliation logic.
package lines
