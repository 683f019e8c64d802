package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"code",
			"restaurant",
			"date",
			"time",
			"guests",
			"name",
			"email",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"code": bson.M{
				"bsonType": "string",
				"pattern":  "^TT-[0-9A-Z]{5}$",
			},

			"restaurant": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			// YYYY-MM-DD
			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			// HH:MM
			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}:\d{2}$`,
			},

			"guests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"note": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
