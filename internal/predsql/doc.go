// Package predsql renders tuple-domain constraints as parameterized SQL
// predicates and binds the resulting values to a prepared statement.
//
// The two phases are decoupled: WhereClause is a pure function producing the
// predicate text plus an ordered list of typed BindValues, and BindAll walks
// that list against a Statement in the same order. Values are never
// interpolated into the SQL text; every literal becomes a ? placeholder.
package predsql
