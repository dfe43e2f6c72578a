// Package docdb provides the document database type constants.
package docdb

// Type represents the type of document database.
type Type string

const (
	// TypeMongoDB represents a MongoDB database.
	TypeMongoDB Type = "mongodb"
	// TypeCosmosDB represents an Azure Cosmos DB database.
	TypeCosmosDB Type = "cosmosdb"
	// TypeCouchDB represents a CouchDB database.
	TypeCouchDB Type = "couchdb"
	// TypeRedis represents documents stored as JSON values in Redis.
	TypeRedis Type = "redis"
	// TypeMemory represents an in-process database.
	TypeMemory Type = "memory"
)
