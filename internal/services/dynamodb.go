package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"weightlifting-schedule-scraper/internal/models"
)

// ScheduleStore provides DynamoDB operations for the schedule table.
// All writes are PutItem upserts keyed by meet partition and session
// sort key; the store never deletes rows.
type ScheduleStore struct {
	client    *dynamodb.Client
	tableName string
}

// NewScheduleStore creates a new schedule store instance
func NewScheduleStore(client *dynamodb.Client, tableName string) *ScheduleStore {
	return &ScheduleStore{
		client:    client,
		tableName: tableName,
	}
}

// PutRecord upserts a single schedule record. PK and SK are derived from
// the record under the given key mode before marshaling.
func (s *ScheduleStore) PutRecord(ctx context.Context, record models.ScheduleRecord, keyMode string) error {
	record.PK = models.MeetPK(record.EventName)
	record.SK = record.SortKey(keyMode)

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule record: %w", err)
	}

	// Put item (upsert)
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put schedule record %s: %w", record.ID, err)
	}

	return nil
}

// ApplyChanges writes the to_add and to_update partitions of a
// reconciliation result. New records get both timestamps; updated
// records keep their original created_at and get a fresh updated_at.
// Unchanged records are not rewritten.
func (s *ScheduleStore) ApplyChanges(ctx context.Context, result models.ReconciliationResult) error {
	now := time.Now().UTC()

	for _, record := range result.ToAdd {
		record.CreatedAt = now
		record.UpdatedAt = now
		if err := s.PutRecord(ctx, record, result.KeyMode); err != nil {
			return fmt.Errorf("failed to add record: %w", err)
		}
	}

	for _, update := range result.ToUpdate {
		record := update.New
		record.CreatedAt = update.Old.CreatedAt
		record.UpdatedAt = now
		if err := s.PutRecord(ctx, record, result.KeyMode); err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}
	}

	return nil
}

// QueryByMeet retrieves all stored schedule records for one meet.
func (s *ScheduleStore) QueryByMeet(ctx context.Context, meetName string) ([]models.ScheduleRecord, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.MeetPK(meetName)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule records for meet %s: %w", meetName, err)
	}

	var records []models.ScheduleRecord
	err = attributevalue.UnmarshalListOfMaps(result.Items, &records)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule records: %w", err)
	}

	return records, nil
}

// CheckConnectivity verifies the table is reachable with a minimal scan.
func (s *ScheduleStore) CheckConnectivity(ctx context.Context) error {
	_, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
		Limit:     aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to scan table %s: %w", s.tableName, err)
	}
	return nil
}
