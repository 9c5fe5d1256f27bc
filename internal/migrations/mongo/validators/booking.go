package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"room_id",
			"check_in",
			"check_out",
			"guests",
			"total_price",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"check_in": bson.M{
				"bsonType": "date",
			},

			"check_out": bson.M{
				"bsonType": "date",
			},

			"guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"total_price": bson.M{
				"bsonType":         []string{"double", "int", "long", "decimal"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"CONFIRMED",
					"CANCELLED",
				},
			},

			"review": bson.M{
				"bsonType": "object",
				"required": []string{"user_id", "rating", "comment"},
				"properties": bson.M{
					"rating": bson.M{
						"bsonType": "int",
						"minimum":  1,
						"maximum":  5,
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
