package tag

import "github.com/codeninja55/go-radx/dicom/vr"

// TagDict is the DICOM data element dictionary: every standard tag this
// module's packages reference, keyed by Tag. Transfer Syntax UIDs and SOP
// Class UIDs live in the uid package's own generated tables, not here.
//
// This only covers the tags actually exercised by dicom/anonymize,
// dicom/dataset_collection.go, dicom/directory_writer.go and deidentify/*
// (largely PS3.15 Confidentiality Profile attributes plus the common
// patient/study/series/image identifiers), not the full ~5000-entry
// Part 6 dictionary.
var TagDict = map[Tag]Info{
	AccessionNumber:                  {AccessionNumber, []vr.VR{vr.ShortString}, "Accession Number", "AccessionNumber", "1", false},
	AcquisitionDate:                  {AcquisitionDate, []vr.VR{vr.Date}, "Acquisition Date", "AcquisitionDate", "1", false},
	AcquisitionDateTime:              {AcquisitionDateTime, []vr.VR{vr.DateTime}, "Acquisition DateTime", "AcquisitionDateTime", "1", false},
	AcquisitionTime:                  {AcquisitionTime, []vr.VR{vr.Time}, "Acquisition Time", "AcquisitionTime", "1", false},
	AdditionalPatientHistory:         {AdditionalPatientHistory, []vr.VR{vr.LongText}, "Additional Patient History", "AdditionalPatientHistory", "1", false},
	AdmittingDiagnosesDescription:    {AdmittingDiagnosesDescription, []vr.VR{vr.LongString}, "Admitting Diagnoses Description", "AdmittingDiagnosesDescription", "1-n", false},
	BitsAllocated:                    {BitsAllocated, []vr.VR{vr.UnsignedShort}, "Bits Allocated", "BitsAllocated", "1", false},
	BitsStored:                       {BitsStored, []vr.VR{vr.UnsignedShort}, "Bits Stored", "BitsStored", "1", false},
	BranchOfService:                  {BranchOfService, []vr.VR{vr.LongString}, "Branch of Service", "BranchOfService", "1", false},
	Columns:                          {Columns, []vr.VR{vr.UnsignedShort}, "Columns", "Columns", "1", false},
	ConsultingPhysicianName:          {ConsultingPhysicianName, []vr.VR{vr.PersonName}, "Consulting Physician's Name", "ConsultingPhysicianName", "1-n", false},
	ContentDate:                      {ContentDate, []vr.VR{vr.Date}, "Content Date", "ContentDate", "1", false},
	ContentTime:                      {ContentTime, []vr.VR{vr.Time}, "Content Time", "ContentTime", "1", false},
	CountryOfResidence:               {CountryOfResidence, []vr.VR{vr.LongString}, "Country of Residence", "CountryOfResidence", "1", false},
	CurrentPatientLocation:           {CurrentPatientLocation, []vr.VR{vr.LongString}, "Current Patient Location", "CurrentPatientLocation", "1", false},
	DerivationDescription:            {DerivationDescription, []vr.VR{vr.ShortText}, "Derivation Description", "DerivationDescription", "1", false},
	DeviceSerialNumber:               {DeviceSerialNumber, []vr.VR{vr.LongString}, "Device Serial Number", "DeviceSerialNumber", "1", false},
	DigitalSignaturesSequence:        {DigitalSignaturesSequence, []vr.VR{vr.SequenceOfItems}, "Digital Signatures Sequence", "DigitalSignaturesSequence", "1", false},
	EthnicGroup:                      {EthnicGroup, []vr.VR{vr.ShortString}, "Ethnic Group", "EthnicGroup", "1", false},
	FileMetaInformationGroupLength:   {FileMetaInformationGroupLength, []vr.VR{vr.UnsignedLong}, "File Meta Information Group Length", "FileMetaInformationGroupLength", "1", false},
	FileMetaInformationVersion:       {FileMetaInformationVersion, []vr.VR{vr.OtherByte}, "File Meta Information Version", "FileMetaInformationVersion", "1", false},
	FrameComments:                    {FrameComments, []vr.VR{vr.LongText}, "Frame Comments", "FrameComments", "1", false},
	HighBit:                          {HighBit, []vr.VR{vr.UnsignedShort}, "High Bit", "HighBit", "1", false},
	ImageComments:                    {ImageComments, []vr.VR{vr.LongText}, "Image Comments", "ImageComments", "1", false},
	ImplementationClassUID:           {ImplementationClassUID, []vr.VR{vr.UniqueIdentifier}, "Implementation Class UID", "ImplementationClassUID", "1", false},
	ImplementationVersionName:        {ImplementationVersionName, []vr.VR{vr.ShortString}, "Implementation Version Name", "ImplementationVersionName", "1", false},
	InstanceCreationDate:             {InstanceCreationDate, []vr.VR{vr.Date}, "Instance Creation Date", "InstanceCreationDate", "1", false},
	InstanceCreationTime:             {InstanceCreationTime, []vr.VR{vr.Time}, "Instance Creation Time", "InstanceCreationTime", "1", false},
	InstanceCreatorUID:               {InstanceCreatorUID, []vr.VR{vr.UniqueIdentifier}, "Instance Creator UID", "InstanceCreatorUID", "1", false},
	InstanceNumber:                   {InstanceNumber, []vr.VR{vr.IntegerString}, "Instance Number", "InstanceNumber", "1", false},
	InstitutionAddress:               {InstitutionAddress, []vr.VR{vr.ShortText}, "Institution Address", "InstitutionAddress", "1", false},
	InstitutionName:                  {InstitutionName, []vr.VR{vr.LongString}, "Institution Name", "InstitutionName", "1", false},
	InstitutionalDepartmentName:      {InstitutionalDepartmentName, []vr.VR{vr.LongString}, "Institutional Department Name", "InstitutionalDepartmentName", "1", false},
	IssuerOfAccessionNumberSequence:  {IssuerOfAccessionNumberSequence, []vr.VR{vr.SequenceOfItems}, "Issuer of Accession Number Sequence", "IssuerOfAccessionNumberSequence", "1", false},
	MediaStorageSOPClassUID:          {MediaStorageSOPClassUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Class UID", "MediaStorageSOPClassUID", "1", false},
	MediaStorageSOPInstanceUID:       {MediaStorageSOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Instance UID", "MediaStorageSOPInstanceUID", "1", false},
	MedicalRecordLocator:             {MedicalRecordLocator, []vr.VR{vr.LongString}, "Medical Record Locator", "MedicalRecordLocator", "1", false},
	MilitaryRank:                     {MilitaryRank, []vr.VR{vr.LongString}, "Military Rank", "MilitaryRank", "1", false},
	Modality:                         {Modality, []vr.VR{vr.CodeString}, "Modality", "Modality", "1", false},
	ModifiedAttributesSequence:       {ModifiedAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Modified Attributes Sequence", "ModifiedAttributesSequence", "1", false},
	NameOfPhysiciansReadingStudy:     {NameOfPhysiciansReadingStudy, []vr.VR{vr.PersonName}, "Name of Physician(s) Reading Study", "NameOfPhysiciansReadingStudy", "1-n", false},
	NumberOfFrames:                   {NumberOfFrames, []vr.VR{vr.IntegerString}, "Number of Frames", "NumberOfFrames", "1", false},
	Occupation:                       {Occupation, []vr.VR{vr.ShortString}, "Occupation", "Occupation", "1", false},
	OperatorsName:                    {OperatorsName, []vr.VR{vr.PersonName}, "Operators' Name", "OperatorsName", "1-n", false},
	OriginalAttributesSequence:       {OriginalAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Original Attributes Sequence", "OriginalAttributesSequence", "1", false},
	OtherPatientIDs:                  {OtherPatientIDs, []vr.VR{vr.LongString}, "Other Patient IDs", "OtherPatientIDs", "1-n", true},
	OtherPatientNames:                {OtherPatientNames, []vr.VR{vr.PersonName}, "Other Patient Names", "OtherPatientNames", "1-n", false},
	PatientAge:                       {PatientAge, []vr.VR{vr.AgeString}, "Patient's Age", "PatientAge", "1", false},
	PatientBirthDate:                 {PatientBirthDate, []vr.VR{vr.Date}, "Patient's Birth Date", "PatientBirthDate", "1", false},
	PatientBirthName:                 {PatientBirthName, []vr.VR{vr.PersonName}, "Patient's Birth Name", "PatientBirthName", "1", true},
	PatientBirthTime:                 {PatientBirthTime, []vr.VR{vr.Time}, "Patient's Birth Time", "PatientBirthTime", "1", false},
	PatientBreedDescription:          {PatientBreedDescription, []vr.VR{vr.LongString}, "Patient Breed Description", "PatientBreedDescription", "1", false},
	PatientComments:                  {PatientComments, []vr.VR{vr.LongText}, "Patient Comments", "PatientComments", "1", false},
	PatientID:                        {PatientID, []vr.VR{vr.LongString}, "Patient ID", "PatientID", "1", false},
	PatientIdentityRemoved:           {PatientIdentityRemoved, []vr.VR{vr.CodeString}, "Patient Identity Removed", "PatientIdentityRemoved", "1", false},
	PatientInstitutionResidence:      {PatientInstitutionResidence, []vr.VR{vr.LongString}, "Patient's Institution Residence", "PatientInstitutionResidence", "1", false},
	PatientMotherBirthName:           {PatientMotherBirthName, []vr.VR{vr.PersonName}, "Patient's Mother's Birth Name", "PatientMotherBirthName", "1", false},
	PatientName:                      {PatientName, []vr.VR{vr.PersonName}, "Patient's Name", "PatientName", "1", false},
	PatientSex:                       {PatientSex, []vr.VR{vr.CodeString}, "Patient's Sex", "PatientSex", "1", false},
	PatientSexNeutered:               {PatientSexNeutered, []vr.VR{vr.CodeString}, "Patient's Sex Neutered", "PatientSexNeutered", "1", false},
	PatientSize:                      {PatientSize, []vr.VR{vr.DecimalString}, "Patient's Size", "PatientSize", "1", false},
	PatientSpeciesDescription:        {PatientSpeciesDescription, []vr.VR{vr.LongString}, "Patient Species Description", "PatientSpeciesDescription", "1", false},
	PatientWeight:                    {PatientWeight, []vr.VR{vr.DecimalString}, "Patient's Weight", "PatientWeight", "1", false},
	PerformedProcedureStepDescription: {PerformedProcedureStepDescription, []vr.VR{vr.LongString}, "Performed Procedure Step Description", "PerformedProcedureStepDescription", "1", false},
	PerformedProcedureStepEndDate:    {PerformedProcedureStepEndDate, []vr.VR{vr.Date}, "Performed Procedure Step End Date", "PerformedProcedureStepEndDate", "1", false},
	PerformedProcedureStepEndTime:    {PerformedProcedureStepEndTime, []vr.VR{vr.Time}, "Performed Procedure Step End Time", "PerformedProcedureStepEndTime", "1", false},
	PerformedProcedureStepStartDate:  {PerformedProcedureStepStartDate, []vr.VR{vr.Date}, "Performed Procedure Step Start Date", "PerformedProcedureStepStartDate", "1", false},
	PerformedProcedureStepStartTime:  {PerformedProcedureStepStartTime, []vr.VR{vr.Time}, "Performed Procedure Step Start Time", "PerformedProcedureStepStartTime", "1", false},
	PerformingPhysicianName:          {PerformingPhysicianName, []vr.VR{vr.PersonName}, "Performing Physician's Name", "PerformingPhysicianName", "1-n", false},
	PersonAddress:                    {PersonAddress, []vr.VR{vr.ShortText}, "Person's Address", "PersonAddress", "1", false},
	PersonName:                       {PersonName, []vr.VR{vr.PersonName}, "Person Name", "PersonName", "1", false},
	PersonTelephoneNumbers:           {PersonTelephoneNumbers, []vr.VR{vr.LongString}, "Person's Telephone Numbers", "PersonTelephoneNumbers", "1-n", false},
	PhotometricInterpretation:        {PhotometricInterpretation, []vr.VR{vr.CodeString}, "Photometric Interpretation", "PhotometricInterpretation", "1", false},
	PhysiciansOfRecord:               {PhysiciansOfRecord, []vr.VR{vr.PersonName}, "Physician(s) of Record", "PhysiciansOfRecord", "1-n", false},
	PixelData:                        {PixelData, []vr.VR{vr.OtherByte, vr.OtherWord}, "Pixel Data", "PixelData", "1", false},
	PixelRepresentation:              {PixelRepresentation, []vr.VR{vr.UnsignedShort}, "Pixel Representation", "PixelRepresentation", "1", false},
	PlanarConfiguration:              {PlanarConfiguration, []vr.VR{vr.UnsignedShort}, "Planar Configuration", "PlanarConfiguration", "1", false},
	ProtocolName:                     {ProtocolName, []vr.VR{vr.LongString}, "Protocol Name", "ProtocolName", "1", false},
	ReferencedStudySequence:          {ReferencedStudySequence, []vr.VR{vr.SequenceOfItems}, "Referenced Study Sequence", "ReferencedStudySequence", "1", false},
	ReferringPhysicianAddress:        {ReferringPhysicianAddress, []vr.VR{vr.ShortText}, "Referring Physician's Address", "ReferringPhysicianAddress", "1", false},
	ReferringPhysicianName:           {ReferringPhysicianName, []vr.VR{vr.PersonName}, "Referring Physician's Name", "ReferringPhysicianName", "1", false},
	ReferringPhysicianTelephoneNumbers: {ReferringPhysicianTelephoneNumbers, []vr.VR{vr.LongString}, "Referring Physician's Telephone Numbers", "ReferringPhysicianTelephoneNumbers", "1-n", false},
	RegionOfResidence:                {RegionOfResidence, []vr.VR{vr.LongString}, "Region of Residence", "RegionOfResidence", "1-n", false},
	RequestAttributesSequence:        {RequestAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Request Attributes Sequence", "RequestAttributesSequence", "1", false},
	RequestedProcedureDescription:    {RequestedProcedureDescription, []vr.VR{vr.LongString}, "Requested Procedure Description", "RequestedProcedureDescription", "1", false},
	RequestingPhysician:              {RequestingPhysician, []vr.VR{vr.PersonName}, "Requesting Physician", "RequestingPhysician", "1", false},
	RequestingService:                {RequestingService, []vr.VR{vr.LongString}, "Requesting Service", "RequestingService", "1", false},
	ResponsibleOrganization:          {ResponsibleOrganization, []vr.VR{vr.LongString}, "Responsible Organization", "ResponsibleOrganization", "1", false},
	ResponsiblePerson:                {ResponsiblePerson, []vr.VR{vr.PersonName}, "Responsible Person", "ResponsiblePerson", "1", false},
	Rows:                             {Rows, []vr.VR{vr.UnsignedShort}, "Rows", "Rows", "1", false},
	SOPClassUID:                      {SOPClassUID, []vr.VR{vr.UniqueIdentifier}, "SOP Class UID", "SOPClassUID", "1", false},
	SOPInstanceUID:                   {SOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "SOP Instance UID", "SOPInstanceUID", "1", false},
	SamplesPerPixel:                  {SamplesPerPixel, []vr.VR{vr.UnsignedShort}, "Samples per Pixel", "SamplesPerPixel", "1", false},
	SeriesDate:                       {SeriesDate, []vr.VR{vr.Date}, "Series Date", "SeriesDate", "1", false},
	SeriesDescription:                {SeriesDescription, []vr.VR{vr.LongString}, "Series Description", "SeriesDescription", "1", false},
	SeriesInstanceUID:                {SeriesInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Series Instance UID", "SeriesInstanceUID", "1", false},
	SeriesNumber:                     {SeriesNumber, []vr.VR{vr.IntegerString}, "Series Number", "SeriesNumber", "1", false},
	SeriesTime:                       {SeriesTime, []vr.VR{vr.Time}, "Series Time", "SeriesTime", "1", false},
	StationName:                      {StationName, []vr.VR{vr.ShortString}, "Station Name", "StationName", "1", false},
	StudyDate:                        {StudyDate, []vr.VR{vr.Date}, "Study Date", "StudyDate", "1", false},
	StudyDescription:                 {StudyDescription, []vr.VR{vr.LongString}, "Study Description", "StudyDescription", "1", false},
	StudyID:                          {StudyID, []vr.VR{vr.ShortString}, "Study ID", "StudyID", "1", false},
	StudyInstanceUID:                 {StudyInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Study Instance UID", "StudyInstanceUID", "1", false},
	StudyTime:                        {StudyTime, []vr.VR{vr.Time}, "Study Time", "StudyTime", "1", false},
	TextComments:                     {TextComments, []vr.VR{vr.LongText}, "Text Comments", "TextComments", "1", false},
	TextString:                       {TextString, []vr.VR{vr.ShortText}, "Text String", "TextString", "1", false},
	TimezoneOffsetFromUTC:            {TimezoneOffsetFromUTC, []vr.VR{vr.ShortString}, "Timezone Offset From UTC", "TimezoneOffsetFromUTC", "1", false},
	TransferSyntaxUID:                {TransferSyntaxUID, []vr.VR{vr.UniqueIdentifier}, "Transfer Syntax UID", "TransferSyntaxUID", "1", false},
}

var (
	AccessionNumber                    = New(0x0008, 0x0050)
	AcquisitionDate                    = New(0x0008, 0x0022)
	AcquisitionDateTime                = New(0x0008, 0x002A)
	AcquisitionTime                    = New(0x0008, 0x0032)
	AdditionalPatientHistory           = New(0x0010, 0x21B0)
	AdmittingDiagnosesDescription      = New(0x0008, 0x1080)
	BitsAllocated                      = New(0x0028, 0x0100)
	BitsStored                        = New(0x0028, 0x0101)
	BranchOfService                   = New(0x0010, 0x1081)
	Columns                            = New(0x0028, 0x0011)
	ConsultingPhysicianName            = New(0x0008, 0x009C)
	ContentDate                        = New(0x0008, 0x0023)
	ContentTime                        = New(0x0008, 0x0033)
	CountryOfResidence                 = New(0x0010, 0x2150)
	CurrentPatientLocation             = New(0x0038, 0x0300)
	DerivationDescription              = New(0x0008, 0x2111)
	DeviceSerialNumber                 = New(0x0018, 0x1000)
	DigitalSignaturesSequence          = New(0xFFFA, 0xFFFA)
	EthnicGroup                        = New(0x0010, 0x2160)
	FileMetaInformationGroupLength     = New(0x0002, 0x0000)
	FileMetaInformationVersion         = New(0x0002, 0x0001)
	FrameComments                      = New(0x0020, 0x9158)
	HighBit                            = New(0x0028, 0x0102)
	ImageComments                      = New(0x0020, 0x4000)
	ImplementationClassUID             = New(0x0002, 0x0012)
	ImplementationVersionName          = New(0x0002, 0x0013)
	InstanceCreationDate               = New(0x0008, 0x0012)
	InstanceCreationTime               = New(0x0008, 0x0013)
	InstanceCreatorUID                 = New(0x0008, 0x0014)
	InstanceNumber                     = New(0x0020, 0x0013)
	InstitutionAddress                 = New(0x0008, 0x0081)
	InstitutionName                    = New(0x0008, 0x0080)
	InstitutionalDepartmentName        = New(0x0008, 0x1040)
	IssuerOfAccessionNumberSequence    = New(0x0008, 0x0051)
	MediaStorageSOPClassUID            = New(0x0002, 0x0002)
	MediaStorageSOPInstanceUID         = New(0x0002, 0x0003)
	MedicalRecordLocator               = New(0x0010, 0x1090)
	MilitaryRank                       = New(0x0010, 0x1080)
	Modality                           = New(0x0008, 0x0060)
	ModifiedAttributesSequence         = New(0x0400, 0x0550)
	NameOfPhysiciansReadingStudy       = New(0x0008, 0x1060)
	NumberOfFrames                     = New(0x0028, 0x0008)
	Occupation                         = New(0x0010, 0x2180)
	OperatorsName                      = New(0x0008, 0x1070)
	OriginalAttributesSequence         = New(0x0400, 0x0561)
	OtherPatientIDs                    = New(0x0010, 0x1000)
	OtherPatientNames                  = New(0x0010, 0x1001)
	PatientAge                         = New(0x0010, 0x1010)
	PatientBirthDate                   = New(0x0010, 0x0030)
	PatientBirthName                   = New(0x0010, 0x1005)
	PatientBirthTime                   = New(0x0010, 0x0032)
	PatientBreedDescription            = New(0x0010, 0x2292)
	PatientComments                    = New(0x0010, 0x4000)
	PatientID                          = New(0x0010, 0x0020)
	PatientIdentityRemoved             = New(0x0012, 0x0062)
	PatientInstitutionResidence        = New(0x0038, 0x0400)
	PatientMotherBirthName             = New(0x0010, 0x1060)
	PatientName                        = New(0x0010, 0x0010)
	PatientSex                         = New(0x0010, 0x0040)
	PatientSexNeutered                 = New(0x0010, 0x2203)
	PatientSize                        = New(0x0010, 0x1020)
	PatientSpeciesDescription          = New(0x0010, 0x2201)
	PatientWeight                      = New(0x0010, 0x1030)
	PerformedProcedureStepDescription  = New(0x0040, 0x0254)
	PerformedProcedureStepEndDate      = New(0x0040, 0x0250)
	PerformedProcedureStepEndTime      = New(0x0040, 0x0251)
	PerformedProcedureStepStartDate    = New(0x0040, 0x0244)
	PerformedProcedureStepStartTime    = New(0x0040, 0x0245)
	PerformingPhysicianName            = New(0x0008, 0x1050)
	PersonAddress                      = New(0x0040, 0x1102)
	PersonName                         = New(0x0040, 0xA123)
	PersonTelephoneNumbers             = New(0x0040, 0x1103)
	PhotometricInterpretation          = New(0x0028, 0x0004)
	PhysiciansOfRecord                 = New(0x0008, 0x1048)
	PixelData                          = New(0x7FE0, 0x0010)
	PixelRepresentation                = New(0x0028, 0x0103)
	PlanarConfiguration                = New(0x0028, 0x0006)
	ProtocolName                       = New(0x0018, 0x1030)
	ReferencedStudySequence            = New(0x0008, 0x1110)
	ReferringPhysicianAddress          = New(0x0008, 0x0092)
	ReferringPhysicianName             = New(0x0008, 0x0090)
	ReferringPhysicianTelephoneNumbers = New(0x0008, 0x0094)
	RegionOfResidence                  = New(0x0010, 0x2152)
	RequestAttributesSequence          = New(0x0040, 0x0275)
	RequestedProcedureDescription      = New(0x0032, 0x1060)
	RequestingPhysician                = New(0x0032, 0x1032)
	RequestingService                  = New(0x0032, 0x1033)
	ResponsibleOrganization            = New(0x0010, 0x2299)
	ResponsiblePerson                  = New(0x0010, 0x2297)
	Rows                               = New(0x0028, 0x0010)
	SOPClassUID                        = New(0x0008, 0x0016)
	SOPInstanceUID                     = New(0x0008, 0x0018)
	SamplesPerPixel                    = New(0x0028, 0x0002)
	SeriesDate                         = New(0x0008, 0x0021)
	SeriesDescription                  = New(0x0008, 0x103E)
	SeriesInstanceUID                  = New(0x0020, 0x000E)
	SeriesNumber                       = New(0x0020, 0x0011)
	SeriesTime                         = New(0x0008, 0x0031)
	StationName                        = New(0x0008, 0x1010)
	StudyDate                          = New(0x0008, 0x0020)
	StudyDescription                   = New(0x0008, 0x1030)
	StudyID                            = New(0x0020, 0x0010)
	StudyInstanceUID                   = New(0x0020, 0x000D)
	StudyTime                          = New(0x0008, 0x0030)
	TextComments                       = New(0x4008, 0x0300)
	TextString                        = New(0x2030, 0x0020)
	TimezoneOffsetFromUTC              = New(0x0008, 0x0201)
	TransferSyntaxUID                  = New(0x0002, 0x0010)
)
