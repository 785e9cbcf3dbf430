package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions applied by Open. Every event table carries the global
// sequence number and a timestamp; see sequenceCounter.
var (
	// CompletionEventsColumns holds the columns for the "completion_events" table.
	CompletionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "milestone_id", Type: field.TypeString, Unique: true},
		{Name: "catalog_version", Type: field.TypeString, Default: ""},
	}
	// CompletionEventsTable holds the schema information for the "completion_events" table.
	CompletionEventsTable = &schema.Table{
		Name:       "completion_events",
		Columns:    CompletionEventsColumns,
		PrimaryKey: []*schema.Column{CompletionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "completionevent_timestamp", Unique: false, Columns: []*schema.Column{CompletionEventsColumns[2]}},
			{Name: "completionevent_session_id", Unique: false, Columns: []*schema.Column{CompletionEventsColumns[3]}},
		},
	}

	// AchievementEventsColumns holds the columns for the "achievement_events" table.
	AchievementEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "achievement_id", Type: field.TypeString, Unique: true},
		{Name: "title", Type: field.TypeString},
		{Name: "rarity", Type: field.TypeString, Default: ""},
	}
	// AchievementEventsTable holds the schema information for the "achievement_events" table.
	AchievementEventsTable = &schema.Table{
		Name:       "achievement_events",
		Columns:    AchievementEventsColumns,
		PrimaryKey: []*schema.Column{AchievementEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "achievementevent_timestamp", Unique: false, Columns: []*schema.Column{AchievementEventsColumns[2]}},
		},
	}

	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_timestamp", Unique: false, Columns: []*schema.Column{SnapshotsColumns[2]}},
			{Name: "snapshot_sequence", Unique: false, Columns: []*schema.Column{SnapshotsColumns[1]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CompletionEventsTable,
		AchievementEventsTable,
		SnapshotsTable,
	}
)
