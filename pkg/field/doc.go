// Package field implements the live field entity placed on a check canvas and
// the reactive behaviours attached to typed fields.
//
// A Field is plain data plus a dirty flag; it knows nothing about rendering.
// Behaviours are resolved by field type through a Behaviors registry and run
// synchronously from Behaviors.Set, which receives the peer fields of the
// canvas explicitly. An amount-number edit therefore updates every
// amount-text sibling before Set returns.
package field
