package cmd

import (
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	var publisher ports.EventPublisher
	if config.KafkaHost != "" {
		publisher = kafka.NewAssignmentPublisher(config.KafkaHost, config.KafkaAssignmentsTopic)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
	}
}

func (c *CompositionRoot) CreateAttachProductCommandHandler() commands.AttachProductCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachProductCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() commands.UpdateProductCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateProductCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRemoveProductCommandHandler() commands.RemoveProductCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveProductCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateDepartureCommandHandler() commands.CreateDepartureCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDepartureCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDepartureCommandHandler() commands.UpdateDepartureCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDepartureCommandHandler(f)
}

func (c *CompositionRoot) CreateDeactivateDepartureCommandHandler() commands.DeactivateDepartureCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateDepartureCommandHandler(f)
}

func (c *CompositionRoot) CreateDeactivatePastDeparturesCommandHandler() commands.DeactivatePastDeparturesCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivatePastDeparturesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetDepartureUsageQueryHandler() queries.GetDepartureUsageQueryHandler {
	return queries.NewGetDepartureUsageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCapacityReportQueryHandler() queries.GetCapacityReportQueryHandler {
	return queries.NewGetCapacityReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableDeparturesQueryHandler() queries.ListAvailableDeparturesQueryHandler {
	return queries.NewListAvailableDeparturesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeparturesQueryHandler() queries.ListDeparturesQueryHandler {
	return queries.NewListDeparturesQueryHandler(c.gormDB)
}

type FuncDepartureUoWFactory func() commands.DepartureUoW

func (f FuncDepartureUoWFactory) Create() commands.DepartureUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
