package db

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/YunChenqwq/MiditoBytebeat/constants"
	"github.com/YunChenqwq/MiditoBytebeat/model"
)

// GetTuneMetadatas fetches title/artist metadata for uploaded filenames.
// Lookups are optional: with no METADATA_ENDPOINT configured the result is
// empty and no network call is made.
func GetTuneMetadatas(filenames []string) (map[string]model.TuneMetadata, error) {
	res := make(map[string]model.TuneMetadata)

	endpoint := constants.GetMetadataEndpoint()
	if endpoint == "" || len(filenames) == 0 {
		return res, nil
	}
	if len(filenames) > 10 {
		return nil, fmt.Errorf("not supposed to pass in more than 10 filenames, got %d", len(filenames))
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}

	client := dynamodb.New(sess)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			constants.MetadataTable: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}

	for _, v := range dbres.Responses[constants.MetadataTable] {
		var m model.TuneMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			m.Year = uint(year)
		}
		m.Artist = strVal(v["Artist"])
		m.Release = strVal(v["Release"])
		m.Title = strVal(v["Title"])
		res[strVal(v["PK"])] = m
	}

	return res, nil
}

func strVal(av *dynamodb.AttributeValue) string {
	if av == nil || av.S == nil {
		return ""
	}
	return *av.S
}
