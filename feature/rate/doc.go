// Package rate imports the rate each store applies to an item category.
package rate
