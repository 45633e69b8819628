// Package storeemployee imports the management hierarchy of each store: one row
// per warehouse naming the employees filling the SS, AH, BCH, GBCH, RH and GRH
// slots.
//
// A slot accepts its own position or a listed higher one, so a missing AH can be
// covered by a BCH. SS and AH must also be assigned to the store's location.
package storeemployee
