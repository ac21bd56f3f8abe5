package database

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared with the repositories.
const (
	UsersTable = "users"
	TasksTable = "tasks"

	ColumnID             = "id"
	ColumnEmail          = "email"
	ColumnHashedPassword = "hashed_password"
	ColumnTitle          = "title"
	ColumnDescription    = "description"
	ColumnStatus         = "status"
	ColumnPriority       = "priority"
	ColumnDueDate        = "due_date"
	ColumnOwnerID        = "owner_id"
)

var (
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnEmail, Type: field.TypeString, Unique: true, Size: 255},
		{Name: ColumnHashedPassword, Type: field.TypeString},
	}
	// UsersSchema holds the schema information for the "users" table.
	UsersSchema = &schema.Table{
		Name:       UsersTable,
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}
	// TasksColumns holds the columns for the "tasks" table.
	TasksColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnTitle, Type: field.TypeString, Size: 200},
		{Name: ColumnDescription, Type: field.TypeString, Nullable: true, Size: 1000},
		{Name: ColumnStatus, Type: field.TypeString, Size: 50, Default: "todo"},
		{Name: ColumnPriority, Type: field.TypeString, Size: 50, Default: "medium"},
		{Name: ColumnDueDate, Type: field.TypeTime, Nullable: true},
		{Name: ColumnOwnerID, Type: field.TypeInt},
	}
	// TasksSchema holds the schema information for the "tasks" table.
	TasksSchema = &schema.Table{
		Name:       TasksTable,
		Columns:    TasksColumns,
		PrimaryKey: []*schema.Column{TasksColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "tasks_users_tasks",
				Columns:    []*schema.Column{TasksColumns[6]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "task_owner_id",
				Unique:  false,
				Columns: []*schema.Column{TasksColumns[6]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		UsersSchema,
		TasksSchema,
	}
)

func init() {
	TasksSchema.ForeignKeys[0].RefTable = UsersSchema
}
