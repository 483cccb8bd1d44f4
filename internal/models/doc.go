// Package models defines the core domain models for BillSync.
//
//   - User: registered account; the unit of identity everywhere else
//   - Group: member list plus the accumulated pairwise debt ledger
//   - Expense: an immutable record of money fronted by one member,
//     split equally or per line item
//
// Relationships use ID strings rather than pointers: an expense references
// its group by GroupID and never duplicates membership data.
package models
