package mocks

//go:generate mockery --name SampleStore --srcpkg github.com/aevon-lab/drivelog/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name TripStore --srcpkg github.com/aevon-lab/drivelog/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name TripTx --srcpkg github.com/aevon-lab/drivelog/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
