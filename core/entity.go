package core

// Entity is a unique identifier for a world object
// Zero is reserved as the null entity
type Entity uint64

// NoEntity is the null entity handle
const NoEntity Entity = 0
